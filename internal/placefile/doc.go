// Package placefile classifies uploaded game-container files and checks that
// their content is a plausible, non-corrupt place of the declared kind.
//
// Two containers are recognised: the XML place (.rbxlx) and the binary place
// (.rbxl). XML places are parsed and walked; binary places are only sniffed
// from their first kilobyte because the format is not public.
//
// Validate never panics and never returns an error. Every outcome, including
// unexpected parser failures, is reported through Verdict.
package placefile
