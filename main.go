package main

import (
	"context"
	"os"

	"voipms-sms-sync/cmd"
)

func main() {
	os.Exit(cmd.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
