// Package engine is an in-process implementation of the native library
// contract. Product graphs live in host memory as native structs; Import,
// Ingest and Export move them through netCDF files.
//
// The on-disk layout follows the product archive conventions: a Conventions
// attribute marks the file, source_product and history are global
// attributes, each product variable becomes one file variable, axis
// dimensions are named after their types, and units, description, valid_min
// and valid_max ride along as variable attributes. Character data carries a
// trailing length dimension named after its variable.
//
// Import auto-detects classic and HDF5 containers. Export writes the
// classic format only; requests for HDF4 or HDF5 output fail with the
// matching support error.
package engine
