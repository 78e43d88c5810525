// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xmetrics provides a Prometheus registry that doubles as a go-kit metrics provider.

Packages describe their metrics up front with a function returning []Metric.  A Registry
created from one or more of those modules preregisters every metric, so that components
can obtain go-kit wrappers or raw Prometheus vectors by name without worrying about
duplicate registrations.
*/
package xmetrics
