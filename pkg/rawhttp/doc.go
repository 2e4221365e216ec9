// Package rawhttp is a single-shot HTTP/1.1 client for the remote admin
// command endpoint.
//
// A call decomposes the server URL, encodes the token and command into a
// two-field JSON object, writes one POST request over a fresh TCP
// connection, reads until the peer closes and returns everything after the
// header/body delimiter. Only plain http is spoken: https URLs are rejected
// before any socket is opened. Status codes are never inspected, and there
// is no chunked decoding, keep-alive, redirect following or cookie handling.
//
//	c, err := rawhttp.NewClient(&rawhttp.ClientOpts{Timeout: 10 * time.Second})
//	if err != nil {
//		return err
//	}
//	body, err := c.RemoteProxy(ctx, "http://127.0.0.1:8080/api/command", token, "status")
package rawhttp
