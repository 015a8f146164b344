// Package openai implements the ai.Embedder gateway against OpenAI-compatible
// embedding APIs (OpenAI, Ollama, vLLM, LocalAI).
package openai
