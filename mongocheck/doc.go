// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package mongocheck checks the health of a MongoDB deployment.

Clients are cached by the canonical signature of their connection settings, so that every
check against the same deployment shares one pooled client.  When a database is configured,
either explicitly or through the path of the connection string, a check runs a ping command
against it.  Otherwise a check lists the database names, which requires broader privileges.
*/
package mongocheck
