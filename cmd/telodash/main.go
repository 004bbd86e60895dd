// cmd/telodash/main.go
package main

import (
	"context"

	"github.com/dalemusser/waffle/app"
	"github.com/teloworks/telodash/internal/app/bootstrap"
)

func main() {
	app.Run(context.Background(), bootstrap.Hooks)
}
