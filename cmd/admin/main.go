// Админский клиент каталога: терминальный аналог страниц веб-админки.
// Работает через те же контроллеры состояния, что и страницы: AuthStore,
// CollectionStore для Test и TestChild, шлюз маршрутов для выбора стартового
// экрана после входа.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"catalog_admin_go/api"
	"catalog_admin_go/config"
	"catalog_admin_go/gate"
	"catalog_admin_go/models"
	"catalog_admin_go/session"
	"catalog_admin_go/stores"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.APIBaseURL)
	persist := session.NewStore(cfg.SessionDir)
	authStore := stores.NewAuthStore(client, persist)

	app := &app{
		auth:      authStore,
		tests:     stores.NewTestStore(client),
		children:  stores.NewTestChildStore(client),
		navigator: terminalNavigator{},
	}

	if err := app.run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`Usage:
  admin login    -email E -password P
  admin logout
  admin whoami
  admin tests    list | get -id N | create -name X [-image FILE]... |
                 update -id N [-name X] [-image FILE]... | delete -id N
  admin children list | get -id N | create -name X -test-id N [-image FILE]... |
                 update -id N [-name X] [-test-id N] [-image FILE]... | delete -id N`)
}

type app struct {
	auth      *stores.AuthStore
	tests     *stores.CollectionStore[models.Test]
	children  *stores.CollectionStore[models.TestChild]
	navigator gate.Navigator
}

// terminalNavigator — навигационный примитив CLI: перенаправление выводится
// как целевой экран.
type terminalNavigator struct{}

func (terminalNavigator) Push(path string) {
	fmt.Println("-> redirect:", path)
}

func (a *app) run(cmd string, args []string) error {
	ctx := context.Background()
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami()
	case "tests":
		return a.testsCmd(ctx, args)
	case "children":
		return a.childrenCmd(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email")
	password := fs.String("password", "", "Password")
	fs.Parse(args)

	// Локальная валидация формы: до сетевого вызова и мимо слота ошибки стора
	if strings.TrimSpace(*email) == "" || strings.TrimSpace(*password) == "" {
		return fmt.Errorf("-email and -password are required")
	}

	if err := a.auth.Login(ctx, *email, *password); err != nil {
		return fmt.Errorf("login failed: %s", a.auth.Err())
	}

	user, token := a.auth.Session()
	fmt.Printf("Logged in as %s %s <%s> (%s)\n", user.FirstName, user.LastName, user.Email, user.Role.RoleName)

	// Шлюз маршрутов выбирает стартовый экран по роли
	g := gate.New(a.navigator, false)
	g.Observe(token, user)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %s", a.auth.Err())
	}
	fmt.Println("Logged out.")
	return nil
}

func (a *app) whoami() error {
	user, token := a.auth.Session()
	if user == nil && token == "" {
		fmt.Println("Not logged in.")
		return nil
	}
	if user != nil {
		fmt.Printf("%s %s <%s>, role %s\n", user.FirstName, user.LastName, user.Email, user.Role.RoleName)
	}
	res := gate.ResolveRoute(token, user, true)
	if res.Redirect != "" && !res.Render {
		fmt.Println("Protected screens redirect to:", res.Redirect)
	} else if res.Redirect != "" {
		fmt.Println("Landing screen:", res.Redirect)
	}
	return nil
}

// imageFlags собирает повторяющийся флаг -image.
type imageFlags []string

func (f *imageFlags) String() string { return strings.Join(*f, ",") }

func (f *imageFlags) Set(value string) error {
	*f = append(*f, value)
	return nil
}

func (a *app) testsCmd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		usage()
		return fmt.Errorf("tests: action required")
	}
	action, args := args[0], args[1:]

	fs := flag.NewFlagSet("tests "+action, flag.ExitOnError)
	id := fs.Int64("id", 0, "Test ID")
	name := fs.String("name", "", "Test name")
	var images imageFlags
	fs.Var(&images, "image", "Image file (repeatable)")
	fs.Parse(args)

	switch action {
	case "list":
		if err := a.tests.FetchAll(ctx); err != nil {
			return fmt.Errorf("%s", a.tests.Err())
		}
		printTests(a.tests.Items())
		return nil
	case "get":
		if *id == 0 {
			return fmt.Errorf("-id required")
		}
		if err := a.tests.FetchOne(ctx, *id); err != nil {
			return fmt.Errorf("%s", a.tests.Err())
		}
		printTests([]models.Test{*a.tests.Focused()})
		return nil
	case "create":
		if strings.TrimSpace(*name) == "" {
			return fmt.Errorf("-name required")
		}
		form, err := buildForm("test", *name, 0, images)
		if err != nil {
			return err
		}
		if err := a.tests.Create(ctx, form); err != nil {
			return fmt.Errorf("%s", a.tests.Err())
		}
		fmt.Println("Created.")
		return nil
	case "update":
		if *id == 0 {
			return fmt.Errorf("-id required")
		}
		form, err := buildForm("test", *name, 0, images)
		if err != nil {
			return err
		}
		if err := a.tests.Update(ctx, *id, form); err != nil {
			return fmt.Errorf("%s", a.tests.Err())
		}
		fmt.Println("Updated.")
		return nil
	case "delete":
		if *id == 0 {
			return fmt.Errorf("-id required")
		}
		if err := a.tests.Delete(ctx, *id); err != nil {
			return fmt.Errorf("%s", a.tests.Err())
		}
		fmt.Println("Deleted.")
		return nil
	default:
		return fmt.Errorf("tests: unknown action %q", action)
	}
}

func (a *app) childrenCmd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		usage()
		return fmt.Errorf("children: action required")
	}
	action, args := args[0], args[1:]

	fs := flag.NewFlagSet("children "+action, flag.ExitOnError)
	id := fs.Int64("id", 0, "TestChild ID")
	name := fs.String("name", "", "TestChild name")
	testID := fs.Int64("test-id", 0, "Parent Test ID")
	var images imageFlags
	fs.Var(&images, "image", "Image file (repeatable)")
	fs.Parse(args)

	switch action {
	case "list":
		if err := a.children.FetchAll(ctx); err != nil {
			return fmt.Errorf("%s", a.children.Err())
		}
		printChildren(a.children.Items())
		return nil
	case "get":
		if *id == 0 {
			return fmt.Errorf("-id required")
		}
		if err := a.children.FetchOne(ctx, *id); err != nil {
			return fmt.Errorf("%s", a.children.Err())
		}
		printChildren([]models.TestChild{*a.children.Focused()})
		return nil
	case "create":
		if strings.TrimSpace(*name) == "" {
			return fmt.Errorf("-name required")
		}
		if *testID == 0 {
			return fmt.Errorf("-test-id required")
		}
		form, err := buildForm("testChild", *name, *testID, images)
		if err != nil {
			return err
		}
		if err := a.children.Create(ctx, form); err != nil {
			return fmt.Errorf("%s", a.children.Err())
		}
		fmt.Println("Created.")
		return nil
	case "update":
		if *id == 0 {
			return fmt.Errorf("-id required")
		}
		form, err := buildForm("testChild", *name, *testID, images)
		if err != nil {
			return err
		}
		if err := a.children.Update(ctx, *id, form); err != nil {
			return fmt.Errorf("%s", a.children.Err())
		}
		fmt.Println("Updated.")
		return nil
	case "delete":
		if *id == 0 {
			return fmt.Errorf("-id required")
		}
		if err := a.children.Delete(ctx, *id); err != nil {
			return fmt.Errorf("%s", a.children.Err())
		}
		fmt.Println("Deleted.")
		return nil
	default:
		return fmt.Errorf("children: unknown action %q", action)
	}
}

// buildForm собирает multipart-форму сущности: текстовое поле имени, при
// необходимости testId и файловые части под повторяющимся полем "image".
func buildForm(nameField, name string, testID int64, images []string) (*api.Form, error) {
	form := api.NewForm()
	if name != "" {
		form.AddField(nameField, name)
	}
	if testID != 0 {
		form.AddField("testId", fmt.Sprintf("%d", testID))
	}
	for _, path := range images {
		if err := form.AddFilePath("image", path); err != nil {
			return nil, fmt.Errorf("image %q: %w", path, err)
		}
	}
	return form, nil
}

func printTests(tests []models.Test) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tIMAGES")
	for _, t := range tests {
		fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.Name, imageSummary(t.Images))
	}
	w.Flush()
}

func printChildren(children []models.TestChild) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTEST\tIMAGES")
	for _, c := range children {
		parent := fmt.Sprintf("%d", c.TestID)
		if c.Test != nil {
			parent = fmt.Sprintf("%d (%s)", c.TestID, c.Test.Name)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Name, parent, imageSummary(c.Images))
	}
	w.Flush()
}

func imageSummary(images models.ImageList) string {
	if len(images) == 0 {
		return "-"
	}
	names := make([]string, 0, len(images))
	for _, img := range images {
		names = append(names, img.OriginalFilename)
	}
	return strings.Join(names, ", ")
}
