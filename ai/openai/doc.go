// Package openai implements ai.Embedder against OpenAI-compatible embedding APIs.
//
// The provider works with any service exposing the /v1/embeddings endpoint:
// Ollama, LocalAI, vLLM, or OpenAI itself. Requests go through langchaingo.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithEmbeddingHost("http://localhost:11434"),
//	    ai.WithEmbeddingModel("all-minilm"),
//	    ai.WithDimension(384),
//	)
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "school funding")
//
// When Config.Dimension is non-zero every returned vector is checked against
// it and a mismatch fails with ai.ErrUnexpectedDimension.
package openai
