package main

import "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/cmd"

func main() {
	cmd.Execute()
}
