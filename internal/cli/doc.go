// Package cli is the interactive front end of placebot. It reads commands
// from a terminal, checks them against the access policy and drives the
// intake and publish services:
//
//	help                        show commands, formats and limits
//	upload <path>               validate and store a place file
//	publish <file_id> [place]   publish a stored file (prompts for the cookie)
//	status                      storage statistics
//	place <place_id>            public details of a place
//	cleanup [hours]             remove old uploads (administrators only)
//	exit | quit                 leave
package cli
