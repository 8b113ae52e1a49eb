// Package legacy writes validation dumps in the ASCII legacy structured
// points format understood by common scientific visualization tools, and
// reads them back.
//
// A dump is a fixed header followed by one SCALARS section per field:
//
//	# vtk DataFile Version 2.0
//	Really cool data
//	ASCII
//	DATASET STRUCTURED_POINTS
//	DIMENSIONS nx ny nz
//	ORIGIN 0 0 0
//	SPACING 1 1 1
//
//	POINT_DATA nx*ny*nz
//	SCALARS name float 1
//	LOOKUP_TABLE default
//	<one value per line>
//
// Dumps can be framed in length-prefixed zstd or lz4 blocks for upload.
// NewReader strips the framing.
package legacy
