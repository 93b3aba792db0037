package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "news-sentiment",
	Short: "A CLI for the news sentiment analysis services",
	Long:  `News sentiment analysis: multi-model sentiment scoring over news articles with trend aggregation.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
