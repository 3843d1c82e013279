// Package ui implements an interactive terminal artist picker using bubbletea's Elm architecture.
//
// The picker is shown when an artist name search returns multiple exact matches and
// the "ask" selection strategy is active. The [Model] implements bubbletea/Elm's
// standard Init/Update/View pattern over a [list.Model] of candidates, each annotated
// with its URI, popularity score, and follower count.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, q) with contextual help
// displayed via charmbracelet/bubbles/help.
package ui
