// package repositories provides persistence over the localstore tables.
//
// The artwork repository backs the offline cache: records fetched from
// the catalog are upserted by their server-assigned id, so repeated
// fetches of overlapping pages stay deduplicated on disk as well as in
// memory.
package repositories
