package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/conf"

	"jup-pnl-sol/internal/config"
	"jup-pnl-sol/internal/svc"
	"jup-pnl-sol/internal/types"
	"jup-pnl-sol/pkg/logger"
)

func main() {
	root := &cobra.Command{
		Use:          "pnlcli",
		Short:        "Jupiter swap PnL calculator",
		SilenceUsage: true,
	}

	pnlCmd := &cobra.Command{
		Use:   "pnl",
		Short: "Compute PnL of one wallet/token pair and print it as JSON",
		RunE:  runPnl,
	}
	pnlCmd.Flags().StringP("config", "f", "etc/pnl-api.yaml", "config file path")
	pnlCmd.Flags().String("wallet", "", "wallet address (base58)")
	pnlCmd.Flags().String("token", "", "token mint address (base58)")
	pnlCmd.Flags().String("rpc", "", "override Rpc.Endpoint")
	_ = pnlCmd.MarkFlagRequired("wallet")
	_ = pnlCmd.MarkFlagRequired("token")

	root.AddCommand(pnlCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPnl(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	walletStr, _ := cmd.Flags().GetString("wallet")
	tokenStr, _ := cmd.Flags().GetString("token")
	rpcURL, _ := cmd.Flags().GetString("rpc")

	wallet, err := types.TryPubkeyFromBase58(walletStr)
	if err != nil {
		return fmt.Errorf("invalid wallet: %w", err)
	}
	token, err := types.TryPubkeyFromBase58(tokenStr)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	var c config.ApiConfig
	if err := conf.Load(cfgFile, &c); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if rpcURL != "" {
		c.Rpc.Endpoint = rpcURL
	}
	// 命令行只输出结果，不发布到 Kafka
	c.KafkaProducerConf.Brokers = ""
	c.LogConf.LogDir = ""

	if err := logger.Init(c.LogConf.ToLogOption()); err != nil {
		return err
	}
	defer logger.Sync()

	serviceContext, err := svc.NewServiceContext(c)
	if err != nil {
		return err
	}
	defer serviceContext.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary := serviceContext.PnlService.Query(ctx, wallet, token)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
