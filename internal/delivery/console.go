package delivery

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ConsoleDelivery writes the report to a writer, stdout by default. It is
// the fallback channel and the target of dry runs.
type ConsoleDelivery struct {
	out io.Writer
}

// NewConsoleDelivery returns a channel writing to stdout.
func NewConsoleDelivery() *ConsoleDelivery {
	return &ConsoleDelivery{out: os.Stdout}
}

// NewConsoleDeliveryTo returns a channel writing to the given writer.
func NewConsoleDeliveryTo(out io.Writer) *ConsoleDelivery {
	return &ConsoleDelivery{out: out}
}

// Name identifies the channel in logs and the run log.
func (c *ConsoleDelivery) Name() string {
	return "console"
}

// Send writes the report body followed by a newline.
func (c *ConsoleDelivery) Send(_ context.Context, _ string, body string) error {
	_, err := fmt.Fprintln(c.out, body)
	return err
}
