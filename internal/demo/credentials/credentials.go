// Package credentials holds the demo binary's static credential table.
// This file is exactly the "build-time-generated const table produced
// by an out-of-band credgen tool" spec.md section 6 describes: it is
// meant to be regenerated by cmd/credgen, not hand-edited. The table
// below ships one sample admin account (password "admin123") purely so
// cmd/nutshelld has something to log into out of the box.
package credentials

import (
	"github.com/marmos91/nutshell/internal/demo/accesslevel"
	"github.com/marmos91/nutshell/pkg/credential"
)

// Table is the demo credential table. credgen overwrites this file
// wholesale when regenerating; hand edits will be lost.
var Table = []credential.Entry[accesslevel.AccessLevel]{
	{
		Username: "admin",
		Level:    accesslevel.Admin,
		Salt: credential.Salt{
			0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
			0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
		},
		Hash: credential.Hash{
			0xb3, 0x8e, 0x1e, 0x55, 0x04, 0x28, 0xe2, 0x65,
			0x61, 0xb2, 0xae, 0x3e, 0x1a, 0x96, 0x9b, 0x8f,
			0xc6, 0xf4, 0xe5, 0x96, 0xd8, 0x2f, 0xd4, 0x05,
			0x5d, 0xe6, 0x00, 0x82, 0xdd, 0x2d, 0x41, 0x0f,
		},
	},
}
