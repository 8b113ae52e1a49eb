// Package minio stores validation dumps and benchmark reports on MinIO or
// any other S3-compatible server.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "bench", "runs/")
//	runner := agnostic.NewRunner(agnostic.WithDump(store, legacy.CompressionZstd))
//
// Use Dial to build the client from an endpoint and static credentials.
package minio
