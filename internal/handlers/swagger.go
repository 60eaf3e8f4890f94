package handlers

// @title Prompt Relay API
// @version 1.0
// @description A serverless endpoint that relays text prompts to a generative AI provider

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name generate
// @tag.description Prompt relay operations

// @tag.name usage
// @tag.description Request audit reporting
