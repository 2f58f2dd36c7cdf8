package cli

import (
	"fmt"
	"time"

	"AstroInsight/internal/domain/models"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// birthFlags are the flags shared by every command that needs birth data.
type birthFlags struct {
	date      string
	clock     string
	latitude  float64
	longitude float64
}

func (f *birthFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.date, "date", "", "birth date, YYYY-MM-DD (required)")
	fs.StringVar(&f.clock, "time", "12:00", "birth time in UTC, HH:MM")
	fs.Float64Var(&f.latitude, "lat", 0, "birth latitude; unset uses the configured default")
	fs.Float64Var(&f.longitude, "lon", 0, "birth longitude; unset uses the configured default")
}

// birthData converts the flags; coordinates are only set when given.
func (f *birthFlags) birthData(fs *pflag.FlagSet) (models.BirthData, error) {
	if f.date == "" {
		return models.BirthData{}, fmt.Errorf("--date is required")
	}
	d, err := time.Parse("2006-01-02", f.date)
	if err != nil {
		return models.BirthData{}, fmt.Errorf("invalid --date %q: %w", f.date, err)
	}
	c, err := time.Parse("15:04", f.clock)
	if err != nil {
		return models.BirthData{}, fmt.Errorf("invalid --time %q: %w", f.clock, err)
	}
	hour, minute := c.Hour(), c.Minute()
	b := models.BirthData{
		Year:   d.Year(),
		Month:  int(d.Month()),
		Day:    d.Day(),
		Hour:   &hour,
		Minute: &minute,
	}
	if fs.Changed("lat") {
		if f.latitude < -90 || f.latitude > 90 {
			return models.BirthData{}, fmt.Errorf("--lat out of range: %v", f.latitude)
		}
		lat := f.latitude
		b.Latitude = &lat
	}
	if fs.Changed("lon") {
		if f.longitude < -180 || f.longitude > 180 {
			return models.BirthData{}, fmt.Errorf("--lon out of range: %v", f.longitude)
		}
		lon := f.longitude
		b.Longitude = &lon
	}
	return b, nil
}

func newNatalCmd(rt *runtime) *cobra.Command {
	var bf birthFlags
	cmd := &cobra.Command{
		Use:   "natal",
		Short: "Compute a natal chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := bf.birthData(cmd.Flags())
			if err != nil {
				return err
			}
			ctx, cancel := rt.context(cmd)
			defer cancel()
			res, err := rt.toolkit.Charts.Natal(ctx, b)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	bf.register(cmd.Flags())
	return cmd
}

func newSolarReturnCmd(rt *runtime) *cobra.Command {
	var (
		bf   birthFlags
		year int
	)
	cmd := &cobra.Command{
		Use:   "solar-return",
		Short: "Find the solar return for a year and compute its chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := bf.birthData(cmd.Flags())
			if err != nil {
				return err
			}
			if year < 1 || year > 9999 {
				return fmt.Errorf("--year out of range: %d", year)
			}
			ctx, cancel := rt.context(cmd)
			defer cancel()
			res, err := rt.toolkit.Charts.SolarReturn(ctx, models.SolarReturnRequest{BirthData: b, CurrentYear: year})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	bf.register(cmd.Flags())
	cmd.Flags().IntVar(&year, "year", time.Now().UTC().Year(), "year of the return")
	return cmd
}
