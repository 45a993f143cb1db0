// Package snapsearch provides a federated search over pre-generated,
// paginated listing snapshots. Each source region publishes its own gapless
// sequence of static pages; a search walks every region's pages in order,
// extracts listing records from the markup, keeps the ones containing the
// query and renders them into a master/detail results page.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, yaml/).
package snapsearch
