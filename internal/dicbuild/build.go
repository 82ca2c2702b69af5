package dicbuild

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// Build compiles a source dictionary directory (char.def, matrix.def,
// unk.def, *.csv) into the binary runtime format a Tagger can open:
// word2id, word.inf, word.dat, word.ary.idx, matrix.bin, char.category
// and code2category, all written to outputDir.
//
// delimiter is the CSV field separator (IPAdic ships comma-separated
// entries; some derived dictionaries use other separators). encoding
// names the source files' text encoding, e.g. "EUC-JP", "Shift_JIS" or
// "UTF-8".
func Build(inputDir, outputDir, delimiter, encoding string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Wrap(err)
	}

	start := time.Now()
	log.Info().Str("input", inputDir).Str("output", outputDir).Msg("building dictionary")

	srch, err := buildWordIDMap(inputDir, outputDir, delimiter, encoding)
	if err != nil {
		return err
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("word id map built")

	if err := buildWordInfo(inputDir, outputDir, delimiter, encoding, srch); err != nil {
		return err
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("word info built")

	if err := buildMatrix(inputDir, outputDir, encoding); err != nil {
		return err
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("connection matrix built")

	if err := buildCharCategory(inputDir, outputDir, encoding, srch); err != nil {
		return err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("dictionary build complete")

	return nil
}
