package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	console "github.com/inference-gateway/hotcli/pkg/console"
	cobra "github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a sample console",
	Long: `Run a sample console with a background counter, a few commands and hotkeys.

Commands:   status, say <first> <last>, ask, longtask, print remember
Hotkeys:    ctrl+s resume the counter, ctrl+p pause it, ctrl+p+o remember, ctrl+q quit
Toggle:     ctrl+c switches between the prompt and the counter output`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().String("policy", "report", "handler failure policy when the config sets none: report or crash")
	demoCmd.Flags().Bool("interactive", false, "start with the prompt instead of the counter output")
	demoCmd.Flags().Duration("interval", time.Second, "counter interval")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Console.HandlerFailure == "" {
		cfg.Console.HandlerFailure, _ = cmd.Flags().GetString("policy")
	}
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		cfg.Console.StartInteractive = true
	}
	interval, _ := cmd.Flags().GetDuration("interval")

	c, err := console.New(cfg, console.WithName("hotcli demo", version))
	if err != nil {
		return err
	}

	if err := registerDemo(c, interval); err != nil {
		_ = c.Close()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	return c.Run(ctx)
}

// registerDemo wires the sample commands, hotkeys and services
func registerDemo(c *console.Console, interval time.Duration) error {
	steps := []func() error{
		func() error {
			return c.AddService("counter", console.WithBag(func(args console.Args) error {
				return counter(args.Bag(0), interval)
			}))
		},
		func() error {
			return c.AddStartupCommand("_", console.WithBag(func(args console.Args) error {
				args.Bag(0).Print("starting")
				return nil
			}), nil)
		},
		func() error {
			return c.AddCommand("status", console.WithBag(func(args console.Args) error {
				bag := args.Bag(0)
				v, _ := bag.Get("count")
				running, _ := bag.Get("status")
				bag.Print(fmt.Sprintf("count=%v running=%v", v, running == true))
				return nil
			}), console.WithDescription("show the counter"))
		},
		func() error {
			return c.AddCommand("say", console.Params(func(args console.Args) error {
				if args.Len() < 3 {
					return fmt.Errorf("usage: say <first> <last>")
				}
				args.Bag(0).Print(args.String(1) + " " + args.String(2))
				return nil
			}, console.ParamBag, console.ParamValue, console.ParamValue), console.WithDescription("print a first and last name"))
		},
		func() error {
			return c.AddCommand("ask", console.WithBag(confirm), console.WithDescription("ask for confirmation"))
		},
		func() error {
			return c.AddCommand("longtask", console.WithBag(func(args console.Args) error {
				args.Bag(0).Print("working...")
				time.Sleep(2 * time.Second)
				args.Bag(0).Print("done")
				return nil
			}), console.WithDescription("block the prompt for two seconds"))
		},
		func() error {
			return c.AddCommand("remember", console.WithBag(remember), console.InGroup("print"), console.Async(),
				console.WithDescription("store a name in the bag and print it"))
		},
		func() error { return c.AddKeybind("ctrl+s", console.Params(setRunning, console.ParamBag, console.ParamValue), true) },
		func() error { return c.AddKeybind("ctrl+p", console.Params(setRunning, console.ParamBag, console.ParamValue), false) },
		func() error { return c.AddKeybind("ctrl+p+o", console.WithBag(remember)) },
		func() error {
			return c.AddKeybind("ctrl+q", console.WithBag(func(args console.Args) error {
				args.Bag(0).Quit()
				return nil
			}))
		},
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func counter(bag console.Bag, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	i := -1
	for range ticker.C {
		if running, _ := bag.Get("status"); running != true {
			continue
		}
		i++
		bag.Set("count", i)
		bag.Print(i)
	}
	return nil
}

func setRunning(args console.Args) error {
	args.Bag(0).Set("status", args.Bool(1))
	return nil
}

func remember(args console.Args) error {
	bag := args.Bag(0)
	bag.Set("name", "rodrigo")
	v, _ := bag.Get("name")
	bag.Print(v)
	return nil
}

func confirm(args console.Args) error {
	bag := args.Bag(0)
	bag.Print("Would you like to continue? Y or N")

	response, err := bag.Input(context.Background())
	if err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y":
		bag.Print("continuing...")
	case "n":
		bag.Print("canceled")
	}
	return nil
}
