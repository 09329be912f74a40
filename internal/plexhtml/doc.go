// Package plexhtml converts a saved Plex web playlist page into song requests.
//
// The Plex web client renders each playlist row as a series of div and span
// elements whose class names start with media-title, media-primary-subtitle
// (artist), media-secondary-subtitle (album), and media-duration. The text
// inside those elements is collected in document order; a request is emitted
// once all four have been seen.
package plexhtml
