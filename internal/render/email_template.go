package render

const emailTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Invoice {{.Number}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2c3e50; color: white; padding: 20px; text-align: center; }
        .invoice-details { margin: 20px 0; }
        .client-info { background: #f8f9fa; padding: 15px; margin: 20px 0; }
        .items-table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 12px; text-align: left; }
        .items-table th { background: #f2f2f2; }
        .total-section { background: #f8f9fa; padding: 15px; margin: 20px 0; }
        .footer { text-align: center; color: #666; margin-top: 30px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Invoice {{.Number}}</h1>
            <span>{{.Status}}</span>
        </div>

        <div class="invoice-details">
            <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
            <p><strong>Due Date:</strong> {{.DueDate}}</p>
            {{if .PaidDate}}<p><strong>Paid Date:</strong> {{.PaidDate}}</p>{{end}}
        </div>

        <div class="client-info">
            <h3>Bill To:</h3>
            <p><strong>{{.ClientName}}</strong></p>
            {{if .Company}}<p>{{.Company}}</p>{{end}}
            {{if .Email}}<p>{{.Email}}</p>{{end}}
            {{if .Phone}}<p>{{.Phone}}</p>{{end}}
        </div>

        <table class="items-table">
            <thead>
                <tr>
                    <th>Description</th>
                    <th>Quantity</th>
                    <th>Price</th>
                    <th>Total</th>
                </tr>
            </thead>
            <tbody>
                {{range .Items}}
                <tr>
                    <td>{{.Description}}</td>
                    <td>{{.Quantity}}</td>
                    <td>{{.Price}}</td>
                    <td>{{.Total}}</td>
                </tr>
                {{end}}
            </tbody>
        </table>

        <div class="total-section">
            <p><strong>Subtotal:</strong> {{.Subtotal}}</p>
            {{if .TaxRate}}<p><strong>Tax ({{.TaxRate}}%):</strong> {{.TaxAmount}}</p>{{end}}
            <p style="font-size: 1.2em;"><strong>Total Amount: {{.TotalAmount}}</strong></p>
        </div>

        {{if .Notes}}
        <div style="margin: 20px 0;">
            <h4>Notes:</h4>
            <p>{{.Notes}}</p>
        </div>
        {{end}}

        <div class="footer">
            <p>Thank you for your business!</p>
            <p>Please contact us if you have any questions about this invoice.</p>
        </div>
    </div>
</body>
</html>
`
