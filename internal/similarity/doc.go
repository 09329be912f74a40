// Package similarity scores how alike two names are on a 0..1 scale.
//
// Ratio is the default: a matching-blocks ratio (2*M/T, where M counts the
// runes in the longest common blocks found recursively and T is the combined
// length). It rewards shared runs such as "AC" and "DC" in "AC/DC" versus
// "AC-DC". EditRatio is a normalized Levenshtein similarity for libraries where
// single-character typos dominate.
//
// Both functions NFC-normalize their input first so names written by
// filesystems that store decomposed Unicode compare equal to typed text.
package similarity
