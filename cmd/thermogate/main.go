// Package main is the entry point for thermogate.
//
//	@title						thermogate API
//	@version					1.0
//	@description				Temperature conversion API guarded by revocable API keys.
//
//	@contact.name				thermogate maintainers
//	@contact.url				https://github.com/artpar/thermogate/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@securityDefinitions.basic	BasicAuth
//	@description				The API key is the username; the password is ignored.
package main

func main() {
	Execute()
}
