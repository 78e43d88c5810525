// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package health is the host framework that dependency checks plug into.

A Registry holds named Registrations, each wrapping a Checker.  Registry.Check evaluates
the registrations concurrently and produces a Report whose status is the worst status of
its entries.  A Monitor evaluates a Registry on a fixed interval, keeps the last Report, and
maintains a set of Stats that are dispatched to StatsListeners and served over HTTP.
*/
package health
