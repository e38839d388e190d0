// Package cli implements the client subcommands:
//
//	invite <email>            issue an invitation
//	register <invitation-id>  redeem an invitation (password is prompted)
//	login <email>             log in and print the access token
//	whoami <token>            print the email the token belongs to
//	logout <token>            ask the server to expire the auth cookie
package cli
