// Package table holds realized dataframes returned by the remote query service.
// Data arrives as JSON Lines, one object per row, and is parsed with https://github.com/tidwall/gjson.
package table
