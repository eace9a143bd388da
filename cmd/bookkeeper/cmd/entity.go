package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
)

var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Manage legal entities",
}

var (
	entityBIN  string
	entityName string
)

var entityCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Onboard a legal entity",
	Long: `Onboard a legal entity identified by its 12-digit BIN.

Example:
  bookkeeper entity create --bin 123456789012 --name "Acme LLP"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
			entity, err := svc.LegalEntity.CreateLegalEntity(ctx, dto.CreateLegalEntityRequest{BIN: entityBIN, Name: entityName}, userID)
			if err != nil {
				return err
			}
			return printJSON(cmd, entity)
		})
	},
}

var entityShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a legal entity by BIN",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
			entity, err := resolveEntity(ctx, svc, entityBIN)
			if err != nil {
				return err
			}
			return printJSON(cmd, entity)
		})
	},
}

func init() {
	entityCreateCmd.Flags().StringVar(&entityBIN, "bin", "", "business identification number (12 digits)")
	entityCreateCmd.Flags().StringVar(&entityName, "name", "", "legal entity name")
	_ = entityCreateCmd.MarkFlagRequired("bin")
	_ = entityCreateCmd.MarkFlagRequired("name")

	entityShowCmd.Flags().StringVar(&entityBIN, "bin", "", "business identification number (12 digits)")
	_ = entityShowCmd.MarkFlagRequired("bin")

	entityCmd.AddCommand(entityCreateCmd, entityShowCmd)
}

// resolveEntity looks a legal entity up by BIN.
func resolveEntity(ctx context.Context, svc *portssvc.ServiceContainer, bin string) (*domain.LegalEntity, error) {
	return svc.LegalEntity.FindLegalEntityByBIN(ctx, bin)
}
