/*
Package remoteagent connects a content-migration host to MongoDB. A repository
is either a plain collection, where each document is one record, or a GridFS
bucket, where each document is a stored file with user metadata.

The read side is a Connector:
  - Documents enumerates matching documents as a channel of StreamResult
  - GetDocument, GetDocumentMetadata and GetDocumentBinary fetch one document
  - DeleteDocument removes one

The write side is a Writer. Each WriteDocument call opens its own store,
stamps the reserved system fields, bridges the payload chunks into a single
stream and inserts the document. Writes run in the background, bounded by a
semaphore, and report through a PendingWrite.

Basic Usage:

	params := config.MapParameters{Values: map[string]string{
		config.ParamURI:        "mongodb://localhost:27017",
		config.ParamDatabase:   "content",
		config.ParamCollection: "files",
		config.ParamUseGridFS:  "true",
	}}
	conn, err := remoteagent.New(ctx, params, remoteagent.WithLogger(log))
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	for res := range conn.Documents(ctx) {
		if res.Error != nil {
			return res.Error
		}
		fmt.Println(res.Document.ID, res.Document.Name)
	}
*/
package remoteagent
