package main

import (
	"sync"

	"github.com/spf13/cobra"
)

// annotationStructuredLog marks commands whose failures should be reported
// through the structured logger instead of plain stderr text.
const annotationStructuredLog = "structured-log"

type commandExecutionContext struct {
	CommandPath       string
	UsesStructuredLog bool
}

var (
	commandCtxMu sync.Mutex
	commandCtx   commandExecutionContext
)

func setCommandExecutionContext(ctx commandExecutionContext) {
	commandCtxMu.Lock()
	defer commandCtxMu.Unlock()
	commandCtx = ctx
}

func resetCommandExecutionContext() {
	setCommandExecutionContext(commandExecutionContext{})
}

func currentCommandExecutionContext() commandExecutionContext {
	commandCtxMu.Lock()
	defer commandCtxMu.Unlock()
	return commandCtx
}

func commandUsesStructuredLogging(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if v, ok := c.Annotations[annotationStructuredLog]; ok {
			return v == "true"
		}
	}
	return false
}
