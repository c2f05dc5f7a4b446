package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/kandyfoma/goshopper/internal/translate"
)

func translateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate product terms between French and English",
		Long: `Run text through the bilingual product dictionary. By default the
target language is chosen from the detected source language; --to forces
a direction.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTranslate,
	}

	cmd.Flags().String("to", "", "target language (fr or en)")

	return cmd
}

func runTranslate(cmd *cobra.Command, args []string) error {
	translator := translate.New()
	text := strings.Join(args, " ")

	target, _ := cmd.Flags().GetString("to")
	detected := translator.Detect(text)
	if target == "" {
		if detected == translate.LangFrench {
			target = translate.LangEnglish
		} else {
			target = translate.LangFrench
		}
	}

	var translated string
	switch target {
	case translate.LangEnglish:
		translated = translator.ToEnglish(text)
	default:
		translated = translator.ToFrench(text)
	}

	return printJSON(map[string]string{
		"input":      text,
		"detected":   detected,
		"target":     target,
		"translated": translated,
	})
}
