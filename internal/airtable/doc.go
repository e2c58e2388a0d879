// Package airtable provides a typed client for the table-store record
// API (Airtable v0 wire contract): record listing with pass-through
// filter formulas, and record creation in the store's field envelope.
package airtable
