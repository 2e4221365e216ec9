package cmd

import (
	"fmt"
	"strings"
)

type command string

func (a command) action() string {
	return string(a) + " command"
}

// confirm asks on stdin; force skips the question.
func confirm(c command, force bool) bool {
	if force {
		return true
	}
	fmt.Printf("Are you sure you want to proceed with the %s? (yes/no): ", c.action())
	var i string
	_, _ = fmt.Scanf("%s", &i)
	switch strings.ToLower(i) {
	case "yes", "y", "true", "1":
		return true
	default:
		fmt.Printf("Cancelled %s operation!\n", c)
		return false
	}
}
