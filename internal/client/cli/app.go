package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/invitekeeper/internal/client/client"
	"github.com/dmitrijs2005/invitekeeper/internal/client/config"
	pb "github.com/dmitrijs2005/invitekeeper/internal/proto"
)

// ErrUsage reports a missing or unknown subcommand or operand.
var ErrUsage = errors.New("usage: client [-a addr] [-t timeout] [-c config.json] invite <email> | register <invitation-id> | login <email> | whoami <token> | logout <token>")

type authClient interface {
	CreateInvitation(ctx context.Context, email string) (*pb.CreateInvitationResponse, error)
	Register(ctx context.Context, invitationID string, password []byte) (string, error)
	Login(ctx context.Context, email string, password []byte) (string, error)
	WhoAmI(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	SetAccessToken(token string)
	Close() error
}

type App struct {
	config *config.Config
	client authClient
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewAuthClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return &App{config: c, client: apiClient, out: os.Stdout}, nil
}

// Run executes the subcommand in args and closes the connection.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.client.Close()

	if len(args) != 2 {
		return ErrUsage
	}
	cmd, arg := args[0], args[1]

	if a.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.RequestTimeout)
		defer cancel()
	}

	switch cmd {
	case "invite":
		return a.invite(ctx, arg)
	case "register":
		return a.register(ctx, arg)
	case "login":
		return a.login(ctx, arg)
	case "whoami":
		return a.whoami(ctx, arg)
	case "logout":
		return a.logout(ctx, arg)
	default:
		return ErrUsage
	}
}

func (a *App) invite(ctx context.Context, email string) error {
	inv, err := a.client.CreateInvitation(ctx, email)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "invitation %s for %s, valid until %s\n", inv.ID, inv.Email, inv.ExpiresAt.Local().Format(time.RFC3339))
	return nil
}

func (a *App) register(ctx context.Context, invitationID string) error {
	password, err := GetPassword(a.out, "Choose password")
	if err != nil {
		return err
	}
	defer wipe(password)

	email, err := a.client.Register(ctx, invitationID, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "registered %s\n", email)
	return nil
}

func (a *App) login(ctx context.Context, email string) error {
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer wipe(password)

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, token)
	return nil
}

func (a *App) whoami(ctx context.Context, token string) error {
	a.client.SetAccessToken(token)
	email, err := a.client.WhoAmI(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, email)
	return nil
}

func (a *App) logout(ctx context.Context, token string) error {
	a.client.SetAccessToken(token)
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
