package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/kass/go-geohash/pkg/config"
	"github.com/kass/go-geohash/pkg/geo"
	"github.com/kass/go-geohash/pkg/geohash"
	"github.com/kass/go-geohash/pkg/logging"
	"github.com/kass/go-geohash/pkg/models"
	"github.com/kass/go-geohash/pkg/ui"
	"github.com/spf13/cobra"
)

type cli struct {
	configFile string
	logLevel   string
	logFormat  string
	length     int

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "geohash",
		Short: "Encode and decode geohashes",
		Long: `Convert between latitude/longitude and geohash strings, inspect the cell a
geohash stands for, and find the inner and outer hashes of a region.

Put -- before the arguments when the first coordinate is negative:
  geohash encode -- -33.8688 151.2093`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "Config file (default config.yaml, then config.yaml.example)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log-format", "", "Log format: text or json")

	encodeCmd := &cobra.Command{
		Use:   "encode <lat> <lng>",
		Short: "Encode a coordinate as a geohash",
		Args:  cobra.ExactArgs(2),
		RunE:  c.runEncode,
	}
	encodeCmd.Flags().SetInterspersed(false)
	encodeCmd.Flags().IntVarP(&c.length, "length", "l", 0, "Geohash length in characters (default from config)")

	decodeCmd := &cobra.Command{
		Use:   "decode <hash>...",
		Short: "Print the center coordinate of each geohash",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.runDecode,
	}

	boundsCmd := &cobra.Command{
		Use:   "bounds <hash>",
		Short: "Print the cell a geohash stands for",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runBounds,
	}

	coverCmd := &cobra.Command{
		Use:   "cover <north> <west> <south> <east>",
		Short: "Print the inner and outer geohash of a region",
		Args:  cobra.ExactArgs(4),
		RunE:  c.runCover,
	}
	coverCmd.Flags().SetInterspersed(false)

	validateCmd := &cobra.Command{
		Use:   "validate <hash>...",
		Short: "Check that every argument is a geohash",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.runValidate,
	}

	rootCmd.AddCommand(encodeCmd, decodeCmd, boundsCmd, coverCmd, validateCmd)
	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Log.Format = c.logFormat
	}
	c.cfg = cfg

	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	slog.Debug("configuration loaded", "source", cfg.Source, "precision", cfg.Geohash.Precision)
	return nil
}

func printer(cmd *cobra.Command) *ui.Printer {
	return ui.NewPrinter(cmd.OutOrStdout())
}

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number: %w", arg, models.ErrInvalidValue)
		}
		values[i] = v
	}
	return values, nil
}

func (c *cli) runEncode(cmd *cobra.Command, args []string) error {
	values, err := parseFloats(args)
	if err != nil {
		return err
	}
	coord, err := models.NewCoordinate(values[0], values[1])
	if err != nil {
		return err
	}

	length := c.length
	if length == 0 {
		length = c.cfg.Geohash.Precision
	}
	hash, err := geohash.FromCoordinate(coord).HashWithMaxLength(length)
	if err != nil {
		return err
	}

	printer(cmd).Line(hash)
	return nil
}

func (c *cli) runDecode(cmd *cobra.Command, args []string) error {
	p := printer(cmd)
	for _, hash := range args {
		r, err := geohash.Decode(hash)
		if err != nil {
			return err
		}
		p.Line(r.Center())
	}
	return nil
}

func (c *cli) runBounds(cmd *cobra.Command, args []string) error {
	r, err := geohash.Decode(args[0])
	if err != nil {
		return err
	}
	width, height := geo.CellSize(r)

	p := printer(cmd)
	p.Title("Geohash " + args[0])
	p.Stat("North", r.North())
	p.Stat("South", r.South())
	p.Stat("West", r.West())
	p.Stat("East", r.East())
	p.Stat("Center", r.Center())
	p.Stat("Size", fmt.Sprintf("%.3f km x %.3f km", width, height))
	return nil
}

func (c *cli) runCover(cmd *cobra.Command, args []string) error {
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	r, err := geohash.NewRegion(
		models.Coordinate{Lat: v[0], Lng: v[1]},
		models.Coordinate{Lat: v[2], Lng: v[3]},
	)
	if err != nil {
		return err
	}

	p := printer(cmd)
	p.Stat("Inner", r.InnerHash())
	p.Stat("Outer", r.OuterHash())
	return nil
}

func (c *cli) runValidate(cmd *cobra.Command, args []string) error {
	p := printer(cmd)
	for _, hash := range args {
		if err := geohash.Validate(hash); err != nil {
			return fmt.Errorf("invalid geohash %q: %w", hash, err)
		}
		p.Success(hash)
	}
	return nil
}

func run(args []string, out, errOut io.Writer) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.Execute()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
