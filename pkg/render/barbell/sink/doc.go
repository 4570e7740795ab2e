// Package sink encodes barbell layouts as SVG, PNG, PDF or JSON.
//
// Every sink repaints from scratch. SVG and JSON never fail; PNG fails only
// if encoding fails, and PDF requires rsvg-convert on PATH.
package sink
