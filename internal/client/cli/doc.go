// Package cli implements the notevault-cli commands.
//
// Each invocation runs one command against the server:
//
//	notevault-cli [-a addr] [-token t] register
//	notevault-cli login
//	notevault-cli add
//	notevault-cli get <id>
//	notevault-cli edit <id>
//	notevault-cli delete <id>
//	notevault-cli list [-page n] [-size n] [query...]
//
// register and login print the issued token as an export line for the
// NOTEVAULT_TOKEN variable, which later commands pick up.
package cli
