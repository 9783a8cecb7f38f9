// Package demo wires a small, self-contained command tree and handler
// for cmd/nutshelld — the stdio terminal shell spec.md's CharIo
// interface (section 6) is written against; the CharIo adapter itself
// lives in cmd/nutshelld. None of this is part
// of the library; it exists to give the reference binary something to
// demonstrate login, navigation, completion, history and async dispatch
// against.
package demo

import (
	"github.com/marmos91/nutshell/internal/demo/accesslevel"
	"github.com/marmos91/nutshell/pkg/shell/tree"
)

// Command IDs dispatched to Handler.ExecuteSync/ExecuteAsync.
const (
	CmdEcho      = "echo"
	CmdUptime    = "uptime"
	CmdWhoAmI    = "whoami"
	CmdReboot    = "reboot"
	CmdStatus    = "status"
	CmdLongTask  = "longtask"
	CmdDiskUsage = "diskusage"
)

var (
	echoCmd = tree.CommandMeta[accesslevel.AccessLevel]{
		ID: CmdEcho, Name: "echo", Description: "Echo the given arguments",
		Level: accesslevel.Guest, Kind: tree.Sync, MinArgs: 0, MaxArgs: 8,
	}
	whoamiCmd = tree.CommandMeta[accesslevel.AccessLevel]{
		ID: CmdWhoAmI, Name: "whoami", Description: "Print the current user",
		Level: accesslevel.Guest, Kind: tree.Sync, MinArgs: 0, MaxArgs: 0,
	}
	uptimeCmd = tree.CommandMeta[accesslevel.AccessLevel]{
		ID: CmdUptime, Name: "uptime", Description: "Show process uptime",
		Level: accesslevel.User, Kind: tree.Sync, MinArgs: 0, MaxArgs: 0,
	}
	statusCmd = tree.CommandMeta[accesslevel.AccessLevel]{
		ID: CmdStatus, Name: "status", Description: "Show subsystem status",
		Level: accesslevel.User, Kind: tree.Sync, MinArgs: 0, MaxArgs: 0,
	}
	diskUsageCmd = tree.CommandMeta[accesslevel.AccessLevel]{
		ID: CmdDiskUsage, Name: "usage", Description: "Report simulated disk usage (async)",
		Level: accesslevel.User, Kind: tree.Async, MinArgs: 0, MaxArgs: 0,
	}
	rebootCmd = tree.CommandMeta[accesslevel.AccessLevel]{
		ID: CmdReboot, Name: "reboot", Description: "Reboot the device (async)",
		Level: accesslevel.Admin, Kind: tree.Async, MinArgs: 0, MaxArgs: 0,
	}
	longTaskCmd = tree.CommandMeta[accesslevel.AccessLevel]{
		ID: CmdLongTask, Name: "run", Description: "Run a long simulated task (async)",
		Level: accesslevel.Admin, Kind: tree.Async, MinArgs: 0, MaxArgs: 1,
	}
)

var systemDir = tree.Directory[accesslevel.AccessLevel]{
	Name:  "system",
	Level: accesslevel.Admin,
	Children: []tree.Node[accesslevel.AccessLevel]{
		tree.NewCommandNode(&rebootCmd),
		tree.NewCommandNode(&statusCmd),
		tree.NewCommandNode(&longTaskCmd),
	},
}

var storageDir = tree.Directory[accesslevel.AccessLevel]{
	Name:  "storage",
	Level: accesslevel.User,
	Children: []tree.Node[accesslevel.AccessLevel]{
		tree.NewCommandNode(&diskUsageCmd),
	},
}

// Root is the demo binary's const command tree. Declaration order is
// the listing order for ls/?/completion, per spec.md section 4.3.
var Root = tree.Directory[accesslevel.AccessLevel]{
	Name:  "",
	Level: accesslevel.Guest,
	Children: []tree.Node[accesslevel.AccessLevel]{
		tree.NewCommandNode(&echoCmd),
		tree.NewCommandNode(&whoamiCmd),
		tree.NewCommandNode(&uptimeCmd),
		tree.NewDirectoryNode(&storageDir),
		tree.NewDirectoryNode(&systemDir),
	},
}
