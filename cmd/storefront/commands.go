package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/infpro/storefront-api/checkout"
	"github.com/infpro/storefront-api/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the InfPro catalog and place orders",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api", getEnv("STOREFRONT_API", "http://localhost:3000"), "storefront API base URL")
	root.PersistentFlags().StringVar(&a.statePath, "state", getEnv("STOREFRONT_STATE", defaultStatePath()), "session state file")
	root.PersistentFlags().StringVar(&a.redisAddr, "redis", getEnv("STOREFRONT_REDIS", ""), "keep the session in Redis at this address instead of the state file")
	root.PersistentFlags().StringVar(&a.profile, "profile", getEnv("STOREFRONT_PROFILE", "default"), "session name on a shared Redis")

	root.AddCommand(
		productsCmd(a),
		cartCmd(a),
		checkoutCmd(a),
		registerCmd(a),
		loginCmd(a),
		logoutCmd(a),
		meCmd(a),
		themeCmd(a),
		reviewsCmd(a),
	)
	return root
}

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

func productsCmd(a *app) *cobra.Command {
	var search, cat string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products, optionally filtered by title and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := a.api.SearchProducts(cmd.Context(), search, cat)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				a.printf("No products found.\n")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE")
			for _, p := range products {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Cat, money(decimal.NewFromFloat(p.Price)))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "title contains (case-insensitive)")
	cmd.Flags().StringVar(&cat, "cat", "", "category, or \"all\"")
	cmd.AddCommand(productAddCmd(a))
	return cmd
}

func productAddCmd(a *app) *cobra.Command {
	var in models.ProductInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.api.CreateProduct(cmd.Context(), in)
			if err != nil {
				return err
			}
			a.printf("Created %s (%s) at %s.\n", p.Title, p.ID, money(decimal.NewFromFloat(p.Price)))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "product title")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "unit price")
	cmd.Flags().StringVar(&in.Cat, "cat", "", "category")
	cmd.Flags().StringVar(&in.Img, "img", "", "image URL")
	cmd.Flags().StringVar(&in.Description, "description", "", "description")
	return cmd
}

func cartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the cart",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a.printCart()
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart and its totals",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a.printCart()
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.sess.AddToCart(cmd.Context(), p); err != nil {
				return err
			}
			a.printf("Added %s. %d item(s) in cart.\n", p.Title, a.sess.Cart.ItemCount())
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sess.RemoveFromCart(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printCart()
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <product-id> <qty>",
		Short: "Set a line's quantity; 0 or less removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a whole number: %q", args[1])
			}
			if err := a.sess.SetQuantity(cmd.Context(), args[0], qty); err != nil {
				return err
			}
			a.printCart()
			return nil
		},
	}

	clearCart := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.sess.ClearCart(cmd.Context()); err != nil {
				return err
			}
			a.printf("Cart cleared.\n")
			return nil
		},
	}

	cmd.AddCommand(show, add, remove, set, clearCart)
	return cmd
}

func (a *app) printCart() {
	items := a.sess.Cart.Items()
	if len(items) == 0 {
		a.printf("Your cart is empty.\n")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tQTY\tEACH\tLINE")
	for _, it := range items {
		price := decimal.NewFromFloat(it.Price)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", it.ID, it.Title, it.Qty, money(price), money(price.Mul(decimal.NewFromInt(int64(it.Qty)))))
	}
	tw.Flush()

	t := a.sess.Cart.Totals()
	shipping := money(t.Shipping)
	if t.FreeShipping() {
		shipping = "free"
	}
	a.printf("Subtotal: %s\nShipping: %s\nTotal:    %s\n", money(t.Subtotal), shipping, money(t.Total))
}

func checkoutCmd(a *app) *cobra.Command {
	var customer, address string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			proc := checkout.NewProcessor(a.api, a.checkoutOpts...)
			a.printf("Processing your order...\n")

			conf, err := proc.Process(cmd.Context(), a.sess, checkout.Customer{Name: customer, Address: address})
			if err != nil {
				return err
			}

			a.printf("Order %s confirmed: %d item(s), total %s.\n", conf.Order.ID, conf.ItemCount, money(conf.Totals.Total))
			return conf.Acknowledge(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&customer, "customer", "", "customer name")
	cmd.Flags().StringVar(&address, "address", "", "delivery address")
	return cmd
}

func registerCmd(a *app) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.api.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			if err := a.sess.SetToken(cmd.Context(), resp.Token); err != nil {
				return err
			}
			a.printf("Welcome, %s.\n", resp.User.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func loginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := a.sess.SetToken(cmd.Context(), resp.Token); err != nil {
				return err
			}
			a.printf("Signed in as %s.\n", resp.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.sess.Logout(cmd.Context()); err != nil {
				return err
			}
			a.printf("Signed out.\n")
			return nil
		},
	}
}

func meCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.sess.Token == "" {
				return fmt.Errorf("not signed in")
			}
			u, err := a.api.Me(cmd.Context())
			if err != nil {
				return err
			}
			a.printf("%s <%s>\n", u.Name, u.Email)
			return nil
		},
	}
}

func themeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the theme preference",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a.printf("Theme: %s\n", a.sess.Theme)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			theme, err := a.sess.ToggleTheme(cmd.Context())
			if err != nil {
				return err
			}
			a.printf("Theme: %s\n", theme)
			return nil
		},
	})
	return cmd
}

func reviewsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reviews",
		Short: "Show customer reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reviews, err := a.api.Reviews(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range reviews {
				a.printf("%d/5  %s: %s\n", r.Rating, r.Name, r.Text)
			}
			return nil
		},
	}
}
