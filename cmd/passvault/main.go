// Command passvault is a local, encrypted password vault CLI.
package main

func main() {
	Execute()
}
