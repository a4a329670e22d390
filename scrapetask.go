// Package scrapetask turns declarative scrape tasks (a target URL plus a set
// of typed element queries, optionally indirected through a reusable
// template) into structured data extracted from that URL's HTML.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package scrapetask
