// Package cleaner drives the ONT deletion dialogue on the OLT shell.
//
// The dialogue is a fixed list of steps. Each step sends one line and names
// the prompt that must follow; a different answer aborts the run.
package cleaner

import (
	"fmt"
	"regexp"
)

// Prompts printed by the OLT shell
var (
	PromptUser       = regexp.MustCompile(`OLT>`)
	PromptPrivileged = regexp.MustCompile(`OLT#`)
	PromptConfig     = regexp.MustCompile(`OLT\(config\)#`)
	PromptInterface  = regexp.MustCompile(`OLT\(config-interface-gpon-0\/0\)#`)
	PromptConfirm    = regexp.MustCompile(`\(y/n\):`)
)

// GPONInterface is the interface whose ports are cleaned
const GPONInterface = "0/0"

// Step is one command and the prompt that must answer it
type Step struct {
	Name    string
	Command string
	Expect  *regexp.Regexp
}

// SetupSteps bring the shell from login to the GPON interface context
var SetupSteps = []Step{
	{Name: "await initial prompt", Command: "", Expect: PromptUser},
	{Name: "enable", Command: "enable", Expect: PromptPrivileged},
	{Name: "config", Command: "config", Expect: PromptConfig},
	{Name: "select interface", Command: "interface gpon " + GPONInterface, Expect: PromptInterface},
}

// DeletionSteps delete every ONT on port. The output of the last step
// carries the deleted count.
func DeletionSteps(port int) []Step {
	return []Step{
		{Name: fmt.Sprintf("delete port %d", port), Command: fmt.Sprintf("ont delete %d all", port), Expect: PromptConfirm},
		{Name: fmt.Sprintf("confirm port %d", port), Command: "y", Expect: PromptInterface},
	}
}
