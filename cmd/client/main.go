package main

import (
	"cmp"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/atinyakov/GophTasks/internal/client"
	"github.com/atinyakov/GophTasks/internal/models"
)

var (
	version   string
	buildDate string
)

// options holds the parsed command-line flags.
type options struct {
	cmd         string
	baseURL     string
	caFile      string
	sessionFile string
	username    string
	password    string
	title       string
	description string
	id          string
	status      string
	search      string
}

// run executes one command against the API and prints its result to out.
func run(ctx context.Context, c *client.Client, sess *client.Session, o options, out io.Writer) error {
	creds := models.Credentials{Username: o.username, Password: o.password}

	switch o.cmd {
	case "signup":
		if err := c.SignUp(ctx, creds); err != nil {
			return err
		}
		fmt.Fprintf(out, "user %s created\n", o.username)
	case "signin":
		token, err := c.SignIn(ctx, creds)
		if err != nil {
			return err
		}
		sess.Username = o.username
		sess.Token = token
		fmt.Fprintf(out, "signed in as %s\n", o.username)
	case "list":
		tasks, err := c.ListTasks(ctx, o.status, o.search)
		if err != nil {
			return err
		}
		return printJSON(out, tasks)
	case "get":
		t, err := c.GetTask(ctx, o.id)
		if err != nil {
			return err
		}
		return printJSON(out, t)
	case "create":
		t, err := c.CreateTask(ctx, o.title, o.description)
		if err != nil {
			return err
		}
		return printJSON(out, t)
	case "delete":
		if err := c.DeleteTask(ctx, o.id); err != nil {
			return err
		}
		fmt.Fprintf(out, "task %s deleted\n", o.id)
	case "status":
		t, err := c.UpdateTaskStatus(ctx, o.id, models.TaskStatus(o.status))
		if err != nil {
			return err
		}
		return printJSON(out, t)
	default:
		return fmt.Errorf("unknown command: %q", o.cmd)
	}
	return nil
}

func printJSON(out io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

// main parses command-line flags and dispatches the requested command.
func main() {
	var (
		o       options
		showVer bool
	)

	flag.StringVar(&o.cmd, "cmd", "", "command: signup | signin | list | get | create | delete | status")
	flag.StringVar(&o.baseURL, "url", "", "server base URL (defaults to the session's, then http://localhost:8080)")
	flag.StringVar(&o.caFile, "ca", "", "path to CA cert for HTTPS servers")
	flag.StringVar(&o.sessionFile, "session", ".gophtasks.json", "path to the session file")
	flag.StringVar(&o.username, "username", "", "username for signup/signin")
	flag.StringVar(&o.password, "password", "", "password for signup/signin")
	flag.StringVar(&o.title, "title", "", "task title")
	flag.StringVar(&o.description, "description", "", "task description")
	flag.StringVar(&o.id, "id", "", "task ID")
	flag.StringVar(&o.status, "status", "", "task status: OPEN | IN_PROGRESS | DONE")
	flag.StringVar(&o.search, "search", "", "substring to search in title or description")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("GophTasks Client\nVersion: %s\nBuild Date: %s\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return
	}

	sess, err := client.LoadSession(o.sessionFile)
	if err != nil {
		log.Fatalf("load session: %v", err)
	}
	sess.BaseURL = cmp.Or(o.baseURL, sess.BaseURL, "http://localhost:8080")

	httpClient, err := client.NewHTTPClient(o.caFile)
	if err != nil {
		log.Fatal(err)
	}
	c := client.New(sess.BaseURL, httpClient)
	c.Token = sess.Token

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, c, sess, o, os.Stdout); err != nil {
		log.Fatal(err)
	}
	if err := sess.Save(o.sessionFile); err != nil {
		log.Fatalf("save session: %v", err)
	}
}
