package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/idkeeper/internal/client/client"
	"github.com/dmitrijs2005/idkeeper/internal/client/config"
	pb "github.com/dmitrijs2005/idkeeper/internal/proto"
)

type App struct {
	config  *config.Config
	client  client.Client
	account *pb.Account
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewAccountClient(c.ServerEndpointAddr, c.CallTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	printlnFn("Welcome to idkeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

func (a *App) getStatus() string {
	if a.account == nil || !a.isLoggedIn() {
		return ""
	}
	return "(" + a.account.GetUsername() + ")"
}
