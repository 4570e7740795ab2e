// Package io reads and writes plate inventory files.
//
// # Overview
//
// An inventory file lists how many pairs of each plate denomination are
// available, optionally with the bar weight they are meant for. It lets a
// gym's plate stock be kept in version control or shared between machines,
// and is what `barbell stock import` and `barbell stock export` use.
//
// # Formats
//
// The format follows the file extension: .json, .toml, or .yaml/.yml.
// All three carry the same document:
//
//	{
//	  "bar": 45,
//	  "plates": {"45": 4, "35": 3, "25": 2, "10": 2, "5": 2, "2.5": 2}
//	}
//
//	bar = 45.0
//	[plates]
//	"45" = 4
//	"2.5" = 2
//
//	bar: 45
//	plates:
//	  45: 4
//	  2.5: 2
//
// # Validation
//
// Denominations must be positive numbers and pair counts must be between
// zero and [errors.MaxPairs]. Violations are reported as INVALID_INPUT
// errors naming the offending entry. A missing bar is reported as zero.
//
// [errors.MaxPairs]: github.com/matzehuels/barbell/pkg/errors.MaxPairs
package io
