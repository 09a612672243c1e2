/*
Copyright © 2025 SellerHub
*/
package main

import "sellerhub.kr/fulfillment/procure/cmd"

func main() {
	cmd.Execute()
}
