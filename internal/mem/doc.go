// Package mem allocates cache-line aligned numeric buffers.
package mem
