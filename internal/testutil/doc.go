// Package testutil holds assertions shared by the package tests.
package testutil
