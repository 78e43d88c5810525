// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package probe implements a single-use transport probe for TCP services, optionally secured with TLS.

A Connection is created with an immutable target (host, port, whether to use TLS, and whether
invalid certificates are allowed).  Connect dials the target, performs the TLS handshake if
requested, and then issues an empty command exchange so that a socket which accepts connections
but never answers is not reported as live.  SendCommand writes a command and performs exactly one
read of up to ResponseBufferSize bytes.  The response is not parsed: the probe only needs to observe
that the remote end answered.

Connections move through a fixed set of states:

	uninitialized -> connected -> closed

There is no reconnect.  Close may be called any number of times and must be called on every
exit path, including when Connect fails.

Every blocking operation accepts a context.  Cancelling the context aborts the dial, handshake,
write, or read in progress.  The probe itself imposes no timeout; callers bound the total latency
through the context.

AllowInvalidCertificates selects the AlwaysTrust policy, which disables certificate chain and
hostname validation.  This is intended for self-signed endpoints in controlled environments only.
*/
package probe
