// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package mailcheck provides SMTP, IMAP, and POP3 presets for the connection probe.

Each check connects, reads the server greeting, and then issues the protocol's liveness
command.  Replies are not parsed:  any reply on a live channel counts as healthy.
*/
package mailcheck
