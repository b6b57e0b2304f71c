// Package models defines the domain entities exchanged with the Artanova catalog API.
//
// The package contains two categories of types:
//
// 1. Server-owned records, parsed from API responses at the HTTP boundary:
//   - [Artwork] : A single catalog item with images and metadata
//   - [Collection] : A named, user-owned, shareable grouping of artworks
//   - [Element] : A membership row linking an artwork into a collection
//   - [FacetMap] : Counts of artworks per distinct filterable value
//
// 2. Client-owned state:
//   - [Session] : The authenticated identity and bearer credential,
//     persisted to the local store and replaced or cleared wholesale
//
// Response shapes are decoded into these types rather than trusted implicitly;
// each carries a Validate method applied at the API boundary.
package models
