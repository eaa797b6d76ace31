// Package main provides the entry point for the formwizard CLI.
package main

func main() {
	Execute()
}
