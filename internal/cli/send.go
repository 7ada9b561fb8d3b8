package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pstuifzand/tui-smartlist/internal/socket"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	var socketPath string
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Control a running tui-smartlist instance",
		Long: `Control a running tui-smartlist instance over its Unix socket.

The newest running instance is used unless --socket names one.`,
	}
	cmd.PersistentFlags().StringVar(&socketPath, "socket", "", "Socket of the instance to control")

	connect := func() (*socket.Client, error) {
		path := socketPath
		if path == "" {
			found, pid, err := socket.FindRunningInstance()
			if err != nil {
				return nil, err
			}
			logrus.Debugf("Found running instance at PID %d: %s", pid, found)
			path = found
		}
		return socket.NewClient(path)
	}

	run := func(send func(*socket.Client) (*socket.Response, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			client, err := connect()
			if err != nil {
				return err
			}
			resp, err := send(client)
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Reveal the next step",
		Args:  cobra.NoArgs,
		RunE:  run(func(c *socket.Client) (*socket.Response, error) { return c.SendStep(true) }),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "prev",
		Short: "Go back one step",
		Args:  cobra.NoArgs,
		RunE:  run(func(c *socket.Client) (*socket.Response, error) { return c.SendStep(false) }),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "state",
		Short: "Print the current step",
		Args:  cobra.NoArgs,
		RunE: run(func(c *socket.Client) (*socket.Response, error) {
			return c.Send(socket.Message{Command: socket.CommandState})
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "release",
		Short: "Hand disclosure back to the instance",
		Args:  cobra.NoArgs,
		RunE:  run(func(c *socket.Client) (*socket.Response, error) { return c.SendRelease() }),
	})

	var focus string
	var all bool
	reveal := &cobra.Command{
		Use:   "reveal [id...]",
		Short: "Show exactly the given items",
		Long: `Show exactly the given items, overriding the instance's own stepping.
With --all everything is shown; with no ids and no --all nothing is.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := append([]string{}, args...)
			if all {
				ids = nil
			}
			return run(func(c *socket.Client) (*socket.Response, error) { return c.SendReveal(focus, ids) })(cmd, args)
		},
	}
	reveal.Flags().StringVar(&focus, "focus", "", "Item to highlight")
	reveal.Flags().BoolVar(&all, "all", false, "Reveal every item")
	cmd.AddCommand(reveal)

	var target, status string
	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Add an item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("item text cannot be empty")
			}
			return run(func(c *socket.Client) (*socket.Response, error) { return c.SendAddItem(text, target, status) })(cmd, args)
		},
	}
	add.Flags().StringVar(&target, "after", "", "Insert after this item id instead of appending")
	add.Flags().StringVar(&status, "status", "", "Status icon id from the list's icon set")
	cmd.AddCommand(add)

	return cmd
}

func printResponse(w io.Writer, resp *socket.Response) error {
	if !resp.Success {
		return fmt.Errorf("instance refused: %s", resp.Message)
	}
	if resp.Message != "" && resp.Message != "Command queued" {
		fmt.Fprintf(w, "mode=%s step=%d/%d", resp.Message, resp.Step, resp.MaxStep)
		if resp.FocusedID != "" {
			fmt.Fprintf(w, " focused=%s", resp.FocusedID)
		}
		fmt.Fprintln(w)
		return nil
	}
	fmt.Fprintln(w, "ok")
	return nil
}
