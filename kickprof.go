// Package kickprof extracts structured creator-profile data from public
// Kickstarter profile pages: identity, location, badges, backing history,
// and summaries of launched projects.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package kickprof
