package crcdriver

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// Command is the command number a client passes to Driver.Command.
type Command uint

const (
	// ProbeCommand returns non-zero to indicate that the driver is present.
	ProbeCommand Command = iota

	// VersionCommand returns the unit's version value.  No consistent
	// semantics are specified for it.
	VersionCommand

	// ComputeCommand requests a CRC over the buffer previously registered
	// with Allow.  The argument is the algorithm selector.
	ComputeCommand
)

var commandData = []enumhelper.EnumData{
	{GoName: "ProbeCommand", Name: "probe"},
	{GoName: "VersionCommand", Name: "version"},
	{GoName: "ComputeCommand", Name: "compute"},
}

// IsValid returns true if cmd is a valid Command constant.
func (cmd Command) IsValid() bool {
	return cmd <= ComputeCommand
}

// GoString returns the Go string representation of this Command constant.
func (cmd Command) GoString() string {
	if !cmd.IsValid() {
		return fmt.Sprintf("Command(%d)", uint(cmd))
	}
	return enumhelper.DereferenceEnumData("Command", commandData, uint(cmd)).GoName
}

// String returns the string representation of this Command constant.
func (cmd Command) String() string {
	if !cmd.IsValid() {
		return fmt.Sprintf("%d", uint(cmd))
	}
	return enumhelper.DereferenceEnumData("Command", commandData, uint(cmd)).Name
}

var _ fmt.GoStringer = Command(0)
var _ fmt.Stringer = Command(0)
