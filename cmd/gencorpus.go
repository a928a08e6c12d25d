package cmd

import (
	"s2-corpus/corpus"
	"s2-corpus/corpusio"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var steps int
var withNeighbors bool
var outDir string
var compress bool

// gencorpusCmd represents the gencorpus command
var gencorpusCmd = &cobra.Command{
	Use:   "gencorpus",
	Short: "Write S2 encode/decode (and optionally neighbor) corpus files",
	Long: `Sweep a lat/lon grid covering the whole sphere and, for every
	sample and every S2 level 0-30, write the cell ID, its token, and the
	decoded cell center to s2_encode_corpus and s2_decode_corpus files in
	the output directory.

	Options:
		--steps:     Grid divisions per axis, endpoints included. The
								 reference encode/decode corpus uses 30.
		--neighbors: Also write s2_neighbor_corpus with the 4 edge
								 neighbors and the full neighbor ring per cell. The
								 reference neighbor corpus uses 60 steps, so this
								 flag changes the --steps default to 60.
		--format:    Output format, csv or parquet.
		--gzip:      Gzip csv output, the form the corpora are shipped in.`,
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevels()

		if withNeighbors && !cmd.Flags().Changed("steps") {
			steps = 60
		}

		sink := func(records chan corpus.Record) error {
			switch format := viper.GetString("format"); format {
			case "parquet":
				return corpusio.StreamToParquet(records, outDir, withNeighbors)
			case "csv":
				return corpusio.StreamToCSV(records, outDir, withNeighbors, compress)
			default:
				logrus.Warnf("Format %s not recognized, using csv", format)
				return corpusio.StreamToCSV(records, outDir, withNeighbors, compress)
			}
		}

		opts := corpus.ConfigOpts{
			Steps:     steps,
			Neighbors: withNeighbors,
		}

		if err := corpus.Generate(opts, sink); err != nil {
			panic(err)
		}
	},
}

func setLogLevels() {
	if viper.GetBool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	} else if viper.GetBool("verbose") {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func init() {
	rootCmd.AddCommand(gencorpusCmd)

	gencorpusCmd.Flags().IntVarP(&steps, "steps", "s", 30, "Grid divisions per axis, endpoints included")
	err := viper.BindPFlag("steps", gencorpusCmd.Flags().Lookup("steps"))
	if err != nil {
		logrus.Exit(1)
	}

	gencorpusCmd.Flags().BoolVarP(&withNeighbors, "neighbors", "N", false, "Also write the neighbor corpus (default steps becomes 60)")
	err = viper.BindPFlag("neighbors", gencorpusCmd.Flags().Lookup("neighbors"))
	if err != nil {
		logrus.Exit(1)
	}

	gencorpusCmd.Flags().StringVarP(&outDir, "outDir", "o", ".", "Directory to write corpus files into")
	err = viper.BindPFlag("outDir", gencorpusCmd.Flags().Lookup("outDir"))
	if err != nil {
		logrus.Exit(1)
	}

	gencorpusCmd.Flags().StringP("format", "f", "csv", "Output format, choose from: csv, parquet")
	err = viper.BindPFlag("format", gencorpusCmd.Flags().Lookup("format"))
	if err != nil {
		logrus.Exit(1)
	}

	gencorpusCmd.Flags().BoolVarP(&compress, "gzip", "z", false, "Gzip csv output files")
	err = viper.BindPFlag("gzip", gencorpusCmd.Flags().Lookup("gzip"))
	if err != nil {
		logrus.Exit(1)
	}
}
