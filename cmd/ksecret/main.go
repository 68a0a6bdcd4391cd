package main

import (
	"context"
	"flag"
	"os"

	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/klog/v2"

	"github.com/renato0307/ksecret/internal/commands"
	"github.com/renato0307/ksecret/internal/ui"
)

func main() {
	// Keep client-go's klog output off stderr, which only carries our error line
	klog.InitFlags(nil)
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "FATAL") // Only show FATAL errors
	flag.Set("v", "0")                   // Minimum verbosity

	streams := genericiooptions.IOStreams{
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}

	cmd := commands.NewRootCommand(commands.Options{IOStreams: streams})
	err := cmd.ExecuteContext(context.Background())
	klog.Flush()

	if err != nil {
		ui.RenderError(streams.ErrOut, err)
		os.Exit(1)
	}
}
