// Command retrolzcat is a thin CLI driver over codec.Registry: encode,
// decode, identify and list the codecs this module implements, and diff
// two files byte-for-byte when a round trip doesn't come back clean.
package main

import (
	"fmt"
	"os"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/retrolz/retrolz/codec"
	"github.com/retrolz/retrolz/codec/registry"
)

var reg = registry.Default()

var rootCmd = &cobra.Command{
	Use:   "retrolzcat",
	Short: "Decode, encode, identify and diff legacy console compression formats",
}

func main() {
	log.SetHandler(clihandler.Default)
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func lookup(name string) (codec.Format, error) {
	f, ok := reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown format %q (see retrolzcat list)", name)
	}
	return f, nil
}

var decodeCmd = &cobra.Command{
	Use:   "decode <format> <in> <out>",
	Short: "Decode a compressed file with the named format",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := lookup(args[0])
		if err != nil {
			return err
		}
		in, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := os.Create(args[2])
		if err != nil {
			return err
		}
		defer out.Close()
		log.WithField("format", f.Name()).Info("decoding")
		return f.Decode(in, out)
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode <format> <in> <out>",
	Short: "Encode a raw file with the named format",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := lookup(args[0])
		if err != nil {
			return err
		}
		in, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := os.Create(args[2])
		if err != nil {
			return err
		}
		defer out.Close()
		log.WithField("format", f.Name()).Info("encoding")
		return f.Encode(in, out)
	},
}

var identifyCmd = &cobra.Command{
	Use:   "identify <file>",
	Short: "Sniff a file's header against every registered format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		header := data
		if len(header) > 16 {
			header = header[:16]
		}
		f, ok := reg.Identify(header)
		if !ok {
			return fmt.Errorf("no registered format recognizes this header")
		}
		fmt.Println(f.Name())
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every registered format's name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range reg.Names() {
			fmt.Println(name)
		}
		return nil
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Show a byte-level diff between two files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		b, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(a), string(b), false)
		if len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual {
			fmt.Println("identical")
			return nil
		}
		fmt.Println(dmp.DiffPrettyText(diffs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd, encodeCmd, identifyCmd, listCmd, diffCmd)
}
